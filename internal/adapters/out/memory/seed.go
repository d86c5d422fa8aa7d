package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/ports"
	"subcontract/internal/pkg/errs"
)

// Seed is the directory content a memory-backed process starts with.
//
//	{
//	  "products":   [{"id": "…", "name": "Cotton fabric", "code": "FAB-01"}],
//	  "warehouses": ["…"]
//	}
type Seed struct {
	Products   []SeedProduct `json:"products"`
	Warehouses []kernel.UUID `json:"warehouses"`
}

type SeedProduct struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
	Code string      `json:"code"`
}

// LoadSeedFile reads a seed from path. An empty path yields an empty seed.
func LoadSeedFile(path string) (Seed, error) {
	if path == "" {
		return Seed{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open memory seed: %w", err)
	}
	defer func() { _ = f.Close() }()

	seed, err := ReadSeed(f)
	if err != nil {
		return Seed{}, fmt.Errorf("read memory seed %s: %w", path, err)
	}
	return seed, nil
}

// ReadSeed decodes and validates a JSON seed. Unknown fields are rejected.
func ReadSeed(r io.Reader) (Seed, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, errs.NewValueIsInvalidErrorWithCause("seed", err)
	}
	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

func (s Seed) Validate() error {
	var all []error
	for i, p := range s.Products {
		if err := p.ID.Validate(); err != nil {
			all = append(all, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("products[%d].id", i), err))
		}
		if strings.TrimSpace(p.Name) == "" {
			all = append(all, errs.NewValueIsRequiredError(fmt.Sprintf("products[%d].name", i)))
		}
	}
	for i, id := range s.Warehouses {
		if err := id.Validate(); err != nil {
			all = append(all, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("warehouses[%d]", i), err))
		}
	}
	return errors.Join(all...)
}

// Directories builds the product and warehouse directories holding the seed.
func (s Seed) Directories() (*ProductDirectory, *WarehouseDirectory) {
	products := make([]ports.Product, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, ports.Product{ID: p.ID, Name: p.Name, Code: p.Code})
	}
	return NewProductDirectory(products...), NewWarehouseDirectory(s.Warehouses...)
}
