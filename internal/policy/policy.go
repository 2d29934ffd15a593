// Package policy holds the access rules for the two authorization surfaces:
// upload metadata records and stored objects. The rules themselves are data
// (RecordRules, ObjectRules) walked by Evaluate. Callers never learn why a
// request was denied; a denial is always the opaque ErrDenied.
package policy

import (
	"errors"
	"strings"
)

var ErrDenied = errors.New("policy: access denied")

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionWrite  Action = "write"
)

// Principal is the authenticated caller, or nobody.
type Principal struct {
	UserID        string
	Authenticated bool
}

// Anonymous is the unauthenticated principal.
var Anonymous = Principal{}

// Authenticated builds a principal for a signed-in user id.
func Authenticated(userID string) Principal {
	return Principal{UserID: userID, Authenticated: true}
}

// Resource is the thing being accessed: a slash-separated path plus, for
// record resources, the owner field stored on the record itself.
type Resource struct {
	Path    string
	OwnerID string
}

// Condition decides a matched rule. vars carries the path captures.
type Condition func(p Principal, vars map[string]string, res Resource) bool

// Rule grants actions on paths matching a pattern. Pattern segments are
// literals, single-segment captures ({name}) or a trailing rest capture
// ({name=**}). Anything not granted is denied.
type Rule struct {
	Match string
	Allow map[Action]Condition
}

type Ruleset []Rule

// Evaluate returns true iff some rule matches the resource path and its
// condition for the action holds. First match wins; default is deny.
func (rs Ruleset) Evaluate(p Principal, a Action, res Resource) bool {
	for _, r := range rs {
		vars, ok := matchPath(r.Match, res.Path)
		if !ok {
			continue
		}
		cond, ok := r.Allow[a]
		if !ok {
			return false
		}
		return cond(p, vars, res)
	}
	return false
}

func matchPath(pattern, path string) (map[string]string, bool) {
	pSegs := strings.Split(pattern, "/")
	segs := strings.Split(path, "/")

	vars := make(map[string]string)
	for i, ps := range pSegs {
		rest := strings.HasPrefix(ps, "{") && strings.HasSuffix(ps, "=**}")
		if rest {
			if i != len(pSegs)-1 || i >= len(segs) {
				return nil, false
			}
			name := strings.TrimSuffix(strings.TrimPrefix(ps, "{"), "=**}")
			vars[name] = strings.Join(segs[i:], "/")
			return vars, true
		}
		if i >= len(segs) {
			return nil, false
		}
		if strings.HasPrefix(ps, "{") && strings.HasSuffix(ps, "}") {
			vars[strings.Trim(ps, "{}")] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	if len(segs) != len(pSegs) {
		return nil, false
	}
	return vars, true
}

// --- conditions ---

func isRecordOwner(p Principal, _ map[string]string, res Resource) bool {
	return p.Authenticated && p.UserID == res.OwnerID
}

func isPathOwner(p Principal, vars map[string]string, _ Resource) bool {
	return p.Authenticated && p.UserID == vars["ownerID"]
}

// --- the two rulesets ---

// RecordRules: an upload record may be created, read or updated only by the
// identity its owner field references. There is no delete rule: no delete
// path exists in this system.
var RecordRules = Ruleset{
	{
		Match: "uploads/{recordID}",
		Allow: map[Action]Condition{
			ActionRead:   isRecordOwner,
			ActionCreate: isRecordOwner,
			ActionUpdate: isRecordOwner,
		},
	},
}

// ObjectRules: objects live under uploads/{ownerID}/... and are readable and
// writable only by that owner.
var ObjectRules = Ruleset{
	{
		Match: "uploads/{ownerID}/{object=**}",
		Allow: map[Action]Condition{
			ActionRead:  isPathOwner,
			ActionWrite: isPathOwner,
		},
	},
}

// --- guards called by the use cases ---

// AuthorizeRecord checks an action against a record's id and owner field.
func AuthorizeRecord(p Principal, a Action, recordID, ownerID string) error {
	res := Resource{Path: "uploads/" + recordID, OwnerID: ownerID}
	if !RecordRules.Evaluate(p, a, res) {
		return ErrDenied
	}
	return nil
}

// AuthorizeObject checks an action against an object store key.
func AuthorizeObject(p Principal, a Action, objectKey string) error {
	if !ObjectRules.Evaluate(p, a, Resource{Path: objectKey}) {
		return ErrDenied
	}
	return nil
}
