package propsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-props/internal/property"
)

// Operations named in error reports.
const (
	OpPatch = "patch"
	OpReset = "reset"
)

// ErrorReport is published on the error topic when a remote command is
// rejected in whole or in part.
type ErrorReport struct {
	Op        string          `json:"op"`
	Error     string          `json:"error"`
	Failures  []FailureReport `json:"failures,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// FailureReport describes one rejected property.
type FailureReport struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// ApplyPatch applies a patch document: each member is set independently,
// absent properties are left alone.
func (s *Service) ApplyPatch(ctx context.Context, doc []byte) error {
	return s.Update(ctx, func(r *property.Registry) error {
		return r.Patch(doc)
	})
}

// ApplyReset restores defaults. An empty payload resets every property;
// otherwise payload must be a JSON array of keys.
func (s *Service) ApplyReset(ctx context.Context, payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return s.Update(ctx, func(r *property.Registry) error {
			return r.ResetAll()
		})
	}

	var keys []string
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResetRequest, err)
	}
	if keys == nil {
		return fmt.Errorf("%w: null is not a key list", ErrInvalidResetRequest)
	}

	return s.Update(ctx, func(r *property.Registry) error {
		var failures []property.KeyError
		for _, key := range keys {
			if err := r.Reset(key); err != nil {
				failures = append(failures, property.KeyError{Key: key, Err: err})
			}
		}
		if len(failures) > 0 {
			return &property.ApplyError{Op: OpReset, Failures: failures}
		}
		return nil
	})
}

func (s *Service) handleSet(ctx context.Context) mqtt.MessageHandler {
	return func(_ string, payload []byte) error {
		err := s.ApplyPatch(ctx, payload)
		if err != nil {
			s.reportError(OpPatch, err)
		}
		return err
	}
}

func (s *Service) handleReset(ctx context.Context) mqtt.MessageHandler {
	return func(_ string, payload []byte) error {
		err := s.ApplyReset(ctx, payload)
		if err != nil {
			s.reportError(OpReset, err)
		}
		return err
	}
}

// reportError publishes an ErrorReport for a rejected command.
func (s *Service) reportError(op string, err error) {
	if s.bus == nil {
		return
	}

	data, mErr := json.Marshal(newErrorReport(op, err))
	if mErr != nil {
		s.logger.Error("encoding error report", "error", mErr)
		return
	}
	if pErr := s.bus.Publish(s.topics.PropsError(s.opts.DeviceID), data, s.opts.QoS, false); pErr != nil {
		s.logger.Warn("error report publish failed", "op", op, "error", pErr)
	}
}

func newErrorReport(op string, err error) ErrorReport {
	report := ErrorReport{
		Op:        op,
		Error:     err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var applyErr *property.ApplyError
	if errors.As(err, &applyErr) {
		for _, f := range applyErr.Failures {
			report.Failures = append(report.Failures, FailureReport{Key: f.Key, Error: f.Err.Error()})
		}
	}
	return report
}
