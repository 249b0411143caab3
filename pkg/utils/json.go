package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON serializa com indentação; bytes de entrada são tratados como JSON já serializado
func PrettyJSON(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", err
		}
		in = decoded
	}

	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
