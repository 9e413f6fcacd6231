// Package domain holds the exercise catalogue records consumed by the seed generator.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSON keys of an exercise record in the catalogue file.
const (
	FieldName              = "nombre"
	FieldCategory          = "categoria"
	FieldBodyweight        = "peso_corporal"
	FieldSynonyms          = "sinonimos"
	FieldLoadFactor        = "factor_carga"
	FieldAnatomicalMapping = "mapeo_anatomico"
)

// ExerciseRecord is one entry of the exercise catalogue.
type ExerciseRecord struct {
	Name       string
	Category   string
	Bodyweight bool
	Synonyms   []string
	// LoadFactor keeps the number exactly as written in the source document.
	LoadFactor json.Number
	// AnatomicalMapping is an opaque JSON document with source key order preserved.
	AnatomicalMapping json.RawMessage
}

// DecodeRecords parses a JSON array of exercise records. Decoding stops at the
// first record that is missing a required key or carries a value of the wrong type.
func DecodeRecords(data []byte) ([]ExerciseRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of exercises", ErrParse)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	records := make([]ExerciseRecord, 0, len(elements))
	for i, raw := range elements {
		record, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(index int, raw json.RawMessage) (ExerciseRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return ExerciseRecord{}, &SchemaError{Index: index, Reason: "record is not a JSON object"}
	}

	var record ExerciseRecord
	fail := func(field, reason string) error {
		return &SchemaError{Index: index, Name: record.Name, Field: field, Reason: reason}
	}

	name, err := requiredString(fields, FieldName)
	if err != nil {
		return record, fail(FieldName, err.Error())
	}
	record.Name = name

	if record.Category, err = requiredString(fields, FieldCategory); err != nil {
		return record, fail(FieldCategory, err.Error())
	}

	if value, ok := fields[FieldBodyweight]; ok && !isNull(value) {
		if err := json.Unmarshal(value, &record.Bodyweight); err != nil {
			return record, fail(FieldBodyweight, "must be a boolean")
		}
	}

	synonyms, ok := fields[FieldSynonyms]
	if !ok || isNull(synonyms) {
		return record, fail(FieldSynonyms, "is required")
	}
	var items []any
	if err := json.Unmarshal(synonyms, &items); err != nil {
		return record, fail(FieldSynonyms, "must be an array of strings")
	}
	record.Synonyms = make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			return record, fail(FieldSynonyms, "must be an array of strings")
		}
		record.Synonyms = append(record.Synonyms, s)
	}

	if record.LoadFactor, err = requiredNumber(fields, FieldLoadFactor); err != nil {
		return record, fail(FieldLoadFactor, err.Error())
	}

	mapping, ok := fields[FieldAnatomicalMapping]
	if !ok {
		return record, fail(FieldAnatomicalMapping, "is required")
	}
	record.AnatomicalMapping = json.RawMessage(bytes.TrimSpace(mapping))

	return record, nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	value, ok := fields[key]
	if !ok || isNull(value) {
		return "", errRequired
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", errNotString
	}
	return s, nil
}

func requiredNumber(fields map[string]json.RawMessage, key string) (json.Number, error) {
	value, ok := fields[key]
	if !ok || isNull(value) {
		return "", errRequired
	}

	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return "", errNotNumber
	}
	n, isNumber := decoded.(json.Number)
	if !isNumber {
		return "", errNotNumber
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsInf(f, 0) {
		return "", errNotFinite
	}
	return n, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
