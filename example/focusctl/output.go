package focusctl

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseValue decodes a JSON literal given on the command line.
func ParseValue(raw string) (Document, error) {
	var v Document
	if err := json.UnmarshalFromString(raw, &v); err != nil {
		return nil, err
	}

	return v, nil
}

// WriteValue prints v to w in the given output format.
func WriteValue(w io.Writer, format string, v Document) error {
	switch format {
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(v); err != nil {
			return err
		}

		return encoder.Close()

	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}

		_, err = w.Write(append(data, '\n'))

		return err

	default:
		return ErrUnknownOutputFormat
	}
}
