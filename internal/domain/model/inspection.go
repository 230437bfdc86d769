package model

// Inspection — заголовок инспекции качества риса.
// Даты хранятся в каноническом текстовом формате "YYYY-MM-DD HH:MM:SS" (UTC).
type Inspection struct {
	// InspectionID — внешний уникальный идентификатор инспекции.
	InspectionID string
	// Name — название инспекции.
	Name string
	// CreateDate — дата создания (канонический формат).
	CreateDate string
	// StandardID — идентификатор стандарта качества.
	StandardID string
	// Note — произвольная заметка.
	Note string
	// StandardName — название стандарта качества.
	StandardName string
	// SamplingDate — дата отбора пробы (канонический формат).
	SamplingDate string
	// SamplingPoint — упорядоченный список точек отбора пробы
	// ("Front End", "Back End", "Other").
	SamplingPoint []string
	// Price — цена партии.
	Price float64
	// ImageLink — ссылка на изображение пробы.
	ImageLink string

	// Criteria — критерии стандарта в порядке создания.
	// Заполняется при чтении по идентификатору, в листинге пустой.
	Criteria []*StandardCriterion
}

// StandardCriterion — одно правило измерения, принадлежащее инспекции.
// Собственной идентичности не имеет, связь — через InspectionID.
type StandardCriterion struct {
	// InspectionID — идентификатор владеющей инспекции.
	InspectionID string
	// Key — ключ критерия в стандарте.
	Key string
	// Name — отображаемое название критерия.
	Name string
	// MinLength, MaxLength — границы длины зерна.
	MinLength float64
	MaxLength float64
	// Shape — упорядоченный список тегов формы ("circle", "square").
	Shape []string
	// ConditionMin, ConditionMax — операторы сравнения ("GE", "LE").
	ConditionMin string
	ConditionMax string
	// Value — измеренное/пороговое значение.
	Value float64
}
