package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/bulkstore/storagemodels"
)

// DynamoDB items are at most 400KB.
const maxLineSize = 400 * 1024

// readRecords decodes one JSON object per line. Blank lines are skipped.
func readRecords(r io.Reader) ([]storagemodels.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []storagemodels.Item
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		av, err := attributevalue.MarshalMap(toAttributeNumbers(doc))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, av)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return records, nil
}

// toAttributeNumbers swaps json.Number for attributevalue.Number so numbers
// reach DynamoDB as written, without a float64 round trip.
func toAttributeNumbers(v any) any {
	switch tv := v.(type) {
	case json.Number:
		return attributevalue.Number(tv)
	case map[string]any:
		for k, e := range tv {
			tv[k] = toAttributeNumbers(e)
		}
		return tv
	case []any:
		for i, e := range tv {
			tv[i] = toAttributeNumbers(e)
		}
		return tv
	default:
		return v
	}
}

// toJSONNumbers is the inverse of toAttributeNumbers for decoded records.
func toJSONNumbers(v any) any {
	switch tv := v.(type) {
	case attributevalue.Number:
		return json.Number(tv)
	case []attributevalue.Number:
		out := make([]json.Number, len(tv))
		for i, n := range tv {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		for k, e := range tv {
			tv[k] = toJSONNumbers(e)
		}
		return tv
	case []any:
		for i, e := range tv {
			tv[i] = toJSONNumbers(e)
		}
		return tv
	default:
		return v
	}
}

type recordWriter struct {
	enc *json.Encoder
	dec *attributevalue.Decoder
}

func newRecordWriter(w io.Writer) *recordWriter {
	return &recordWriter{
		enc: json.NewEncoder(w),
		dec: attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
			o.UseNumber = true
		}),
	}
}

// write encodes r as one JSON line.
func (w *recordWriter) write(r storagemodels.Record) error {
	var doc map[string]any
	if err := w.dec.Decode(&types.AttributeValueMemberM{Value: r}, &doc); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return w.enc.Encode(toJSONNumbers(doc))
}
