package repository

import "github.com/suminventa/kardex-api/internal/domain/entity"

// ProductRepository define el puerto de lectura de productos. El motor de
// inventario no crea ni modifica productos: el catálogo vive fuera del core.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
