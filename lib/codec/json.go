package codec

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// JSON reads records from JSON objects. Integral numbers decode as int64
// and all other numbers as float64, so INTEGER and FLOAT fields come back
// widened after a round trip.
type JSON struct{}

func (JSON) Encode(fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	return json.Marshal(fields)
}

// Decode rejects anything but a single well-formed JSON object, including
// trailing content and trailing commas that jsonparser alone would accept.
func (JSON) Decode(data []byte) (map[string]any, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("json decode: malformed document")
	}
	vdata, vtype, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	if vtype != jsonparser.Object {
		return nil, fmt.Errorf("json decode: expected object, found %s", vtype)
	}
	v, err := parseJson(vdata, vtype)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func parseJson(vdata []byte, vtype jsonparser.ValueType) (any, error) {
	switch vtype {
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(vdata)
	case jsonparser.Number:
		if v, err := jsonparser.ParseInt(vdata); err == nil {
			return v, nil
		}
		return jsonparser.ParseFloat(vdata)
	case jsonparser.String:
		return jsonparser.ParseString(vdata)
	case jsonparser.Array:
		ret := make([]any, 0)
		var errors []error
		handler := func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil {
				errors = append(errors, err)
				return
			}
			v, err := parseJson(value, dataType)
			if err != nil {
				errors = append(errors, err)
				return
			}
			ret = append(ret, v)
		}
		if _, err := jsonparser.ArrayEach(vdata, handler); err != nil {
			return nil, err
		}
		if len(errors) != 0 {
			return nil, errors[0]
		}
		return ret, nil
	case jsonparser.Object:
		ret := make(map[string]any)
		handler := func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			v, err := parseJson(value, dataType)
			if err != nil {
				return err
			}
			ret[k] = v
			return nil
		}
		if err := jsonparser.ObjectEach(vdata, handler); err != nil {
			return nil, err
		}
		return ret, nil
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown json type %s", vtype)
	}
}
