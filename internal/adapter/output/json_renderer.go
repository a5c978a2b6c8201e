// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

//go:embed schema.json
var reportSchema []byte

// ErrSchemaViolation is returned when a rendered report does not match
// the published report schema.
var ErrSchemaViolation = errors.New("report does not match schema")

type JSONRenderer struct {
	schema gojsonschema.JSONLoader
}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{schema: gojsonschema.NewBytesLoader(reportSchema)}
}

var _ ports.OutputRenderer = (*JSONRenderer)(nil)

func (r *JSONRenderer) Format() string {
	return "json"
}

func (r *JSONRenderer) Render(report *model.ProjectReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if err := ValidateReport(r.schema, data); err != nil {
		return "", err
	}
	return string(data), nil
}

// Schema returns the JSON schema every rendered report satisfies.
func Schema() []byte {
	return append([]byte(nil), reportSchema...)
}

// ValidateReport checks a JSON document against schema. A nil schema
// uses the embedded one.
func ValidateReport(schema gojsonschema.JSONLoader, doc []byte) error {
	if schema == nil {
		schema = gojsonschema.NewBytesLoader(reportSchema)
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}
