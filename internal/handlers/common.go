package handlers

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func setJSON(dst *datatypes.JSON, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*dst = datatypes.JSON(raw)
	return nil
}
