package domain

import "time"

const (
	// UnclassifiedName é o nome do bucket de conversões sem classificação válida
	UnclassifiedName = "Sem classificação"
	// DefaultClassificationColor é usada quando a classificação não define uma cor
	DefaultClassificationColor = "#6366f1"
)

// CouponClassification é uma categoria definida pela marca para agrupar cupons.
// Nunca é removida fisicamente: a exclusão apenas marca IsActive = false.
type CouponClassification struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassificationKey identifica um bucket do agrupamento por classificação.
// None marca o bucket "sem classificação" sem depender do nome, evitando colisão
// com uma classificação real chamada "Sem classificação".
type ClassificationKey struct {
	ID   string
	None bool
}

var NoClassification = ClassificationKey{None: true}

func ClassificationKeyOf(id string) ClassificationKey {
	if id == "" {
		return NoClassification
	}
	return ClassificationKey{ID: id}
}

type ClassificationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}
