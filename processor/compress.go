package processor

import (
	"fmt"

	"github.com/golang/snappy"
)

// CompressSnapshot сжимает выгрузку перед записью в хранилище
func CompressSnapshot(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// DecompressSnapshot восстанавливает выгрузку, сохраненную CompressSnapshot
func DecompressSnapshot(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}
	return decompressed, nil
}
