package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Decode[T any](bz []byte) (T, error) {
	v := new(T)
	err := json.Unmarshal(bz, v)
	if err != nil {
		return *v, eris.Wrap(err, "")
	}
	return *v, nil
}

// DecodeInto unmarshals bz into an existing value, typically a pointer into arena storage.
func DecodeInto(bz []byte, target any) error {
	return eris.Wrap(json.Unmarshal(bz, target), "")
}

func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
