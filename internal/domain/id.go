package domain

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// ID 是实体的不透明标识。旧版数据使用 Date.now() 生成的数字，解码时同样接受。
type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID(n.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ID(s)
	return nil
}
