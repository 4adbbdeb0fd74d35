// Package codec сериализует лес комментариев в один JSON-блоб
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/oziev02/threadtree/internal/domain"
)

// Encode сериализует лес. Пустые списки ответов записываются как [].
func Encode(forest domain.Forest) ([]byte, error) {
	data, err := json.Marshal(forest.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to encode forest: %w", err)
	}
	return data, nil
}

// Decode разбирает лес и проверяет уникальность идентификаторов
func Decode(data []byte) (domain.Forest, error) {
	var forest domain.Forest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to decode forest: %w", err)
	}
	forest = forest.Clone()
	if err := forest.Validate(); err != nil {
		return nil, err
	}
	return forest, nil
}
