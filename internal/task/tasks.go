package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAnalyseUpload = "upload:analyse"

type AnalyseUploadPayload struct {
	UploadID string `json:"upload_id"`
}

// NewAnalyseUploadTask creates an Asynq task for analysing an upload by ID.
func NewAnalyseUploadTask(uploadID string) (*asynq.Task, error) {
	p := AnalyseUploadPayload{UploadID: uploadID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal analyse-upload payload: %w", err)
	}
	return asynq.NewTask(TypeAnalyseUpload, data), nil
}

// ParseAnalyseUploadPayload parses the task payload to AnalyseUploadPayload.
func ParseAnalyseUploadPayload(t *asynq.Task) (AnalyseUploadPayload, error) {
	var p AnalyseUploadPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return AnalyseUploadPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
