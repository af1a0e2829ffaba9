// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Brand é o tenant raiz: toda consulta do dashboard é feita no escopo de uma marca
type Brand struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	OwnerID         int       `json:"owner_id"`
	ExternalStoreID *string   `json:"external_store_id"`
	IsReal          bool      `json:"is_real"`
	CreatedAt       time.Time `json:"created_at"`
}

// BrandSecret guarda o token de acesso da loja Nuvemshop da marca
type BrandSecret struct {
	BrandID     string    `json:"brand_id"`
	AccessToken string    `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasStore indica se a marca está conectada a uma loja externa
func (b *Brand) HasStore() bool {
	return b.ExternalStoreID != nil && *b.ExternalStoreID != ""
}
