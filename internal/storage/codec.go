package storage

import (
	"encoding/json"
	"errors"

	"fibertract/internal/model"
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeBundle(b model.BundleRecord) ([]byte, error) {
	return json.Marshal(b)
}

func DecodeBundle(data []byte) (model.BundleRecord, error) {
	var bundle model.BundleRecord
	if err := json.Unmarshal(data, &bundle); err != nil {
		return model.BundleRecord{}, err
	}
	if err := checkVersion(bundle.VersionedRecord); err != nil {
		return model.BundleRecord{}, err
	}
	return bundle, nil
}

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeActivityHistory(history []uint64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeActivityHistory(data []byte) ([]uint64, error) {
	var history []uint64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func EncodePainEvents(events []model.PainRecord) ([]byte, error) {
	return json.Marshal(events)
}

func DecodePainEvents(data []byte) ([]model.PainRecord, error) {
	var events []model.PainRecord
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != model.CurrentSchemaVersion || v.CodecVersion != model.CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
