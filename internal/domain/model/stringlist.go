// stringlist.go — сериализация списочных полей (SamplingPoint, Shape)
// для хранения одной текстовой колонкой. Чистый round-trip с сохранением
// порядка, не зависит от нативных типов хранилища.
package model

import (
	"encoding/json"
	"fmt"
)

// EncodeStringList сериализует список строк в JSON-массив.
// nil и пустой список дают "[]".
func EncodeStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации списка: %w", err)
	}
	return string(b), nil
}

// DecodeStringList разбирает JSON-массив обратно в список строк.
// Пустая строка трактуется как пустой список.
func DecodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("ошибка разбора списка: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
