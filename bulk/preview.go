/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/suparena/bulkstore/storagemodels"
)

const (
	maxPreviews     = 5
	maxPreviewRunes = 100
)

// previewWrites renders the first units of a failed chunk for the log, each
// cut to maxPreviewRunes.
func previewWrites(chunk []storagemodels.WriteRequest) []string {
	n := min(len(chunk), maxPreviews)
	previews := make([]string, 0, n+1)
	for _, w := range chunk[:n] {
		previews = append(previews, truncate(renderAttributes(w), maxPreviewRunes))
	}
	if len(chunk) > n {
		previews = append(previews, fmt.Sprintf("... %d more", len(chunk)-n))
	}
	return previews
}

func renderAttributes(w storagemodels.WriteRequest) string {
	kind := "put"
	if w.DeleteRequest != nil {
		kind = "delete"
	}

	var plain map[string]any
	if err := attributevalue.UnmarshalMap(w.Attributes(), &plain); err != nil {
		return fmt.Sprintf("%s %v", kind, w.Attributes())
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return fmt.Sprintf("%s %v", kind, plain)
	}
	return kind + " " + string(b)
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}
