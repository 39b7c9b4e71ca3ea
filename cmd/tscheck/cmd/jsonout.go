package cmd

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tscore-lang/tscore/pkg/tscheck"
)

// diagnosticsJSON assembles diags into a JSON array, one object per
// diagnostic, built incrementally with sjson rather than encoding/json
// so a caller embedding this output inside a larger document (an LSP
// response, a CI annotation payload) can splice it in without a second
// marshal pass.
func diagnosticsJSON(diags []*tscheck.Diagnostic) (string, error) {
	out := "[]"
	var err error
	for i, d := range diags {
		prefix := itoaPath(i)
		out, err = sjson.Set(out, prefix+".kind", d.Kind)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, prefix+".message", d.Message)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, prefix+".line", d.Line)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, prefix+".column", d.Column)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, prefix+".severity", d.Severity.String())
		if err != nil {
			return "", err
		}
	}
	return out, nil
}

func itoaPath(i int) string {
	// sjson path segments for array indices are plain decimal digits.
	digits := []byte{}
	if i == 0 {
		return "0"
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// summarizeDiagnosticsJSON pulls just the fields a one-line terminal
// summary needs back out of an already-assembled diagnostics JSON
// document, via gjson rather than re-parsing through the Diagnostic
// struct — useful when the JSON came from somewhere else (a cached
// report, a remote check run) and only a summary is wanted locally.
func summarizeDiagnosticsJSON(doc string) (count int, firstMessage string) {
	result := gjson.Parse(doc)
	arr := result.Array()
	count = len(arr)
	if count > 0 {
		firstMessage = arr[0].Get("message").String()
	}
	return count, firstMessage
}
