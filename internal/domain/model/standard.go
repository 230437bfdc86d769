package model

// Standard — справочная запись стандарта качества.
type Standard struct {
	// StandardID — идентификатор стандарта.
	StandardID string
	// Name — название стандарта.
	Name string
	// CreateDate — дата создания записи (канонический формат).
	CreateDate string
}
