package repositories

import "github.com/vsinha/pcp/pkg/domain/entities"

// SKURepository provides access to the SKU catalog
type SKURepository interface {
	GetSKU(id entities.SKUID) (*entities.SKU, error)
	GetAllSKUs() ([]*entities.SKU, error)
	LoadSKUs(skus []*entities.SKU) error
}

// MachineRepository provides access to shop floor machines
type MachineRepository interface {
	GetMachine(id string) (*entities.Machine, error)
	GetAllMachines() ([]*entities.Machine, error)
	LoadMachines(machines []*entities.Machine) error
}
