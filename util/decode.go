package util

import (
	"encoding/json"
	"io"
)

// FullDecode decodes a JSON body into obj and drains the reader to EOF so the
// underlying connection can be reused.
func FullDecode(r io.ReadCloser, obj interface{}) error {
	d := json.NewDecoder(r)
	err := d.Decode(obj)
	io.Copy(io.Discard, r)
	r.Close()
	return err
}
