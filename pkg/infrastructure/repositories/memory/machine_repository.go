package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// MachineRepository provides in-memory machine storage
type MachineRepository struct {
	mu          sync.RWMutex
	machines    []entities.Machine
	machinesMap map[string]int
}

// NewMachineRepository creates a new in-memory machine repository
func NewMachineRepository(expectedMachines int) *MachineRepository {
	return &MachineRepository{
		machines:    make([]entities.Machine, 0, expectedMachines),
		machinesMap: make(map[string]int, expectedMachines),
	}
}

var _ repositories.MachineRepository = (*MachineRepository)(nil)

// LoadMachines validates and loads machines
func (r *MachineRepository) LoadMachines(machines []*entities.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(machines))
	for _, m := range machines {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, exists := r.machinesMap[m.ID]; exists || seen[m.ID] {
			return fmt.Errorf("duplicate machine id: %s", m.ID)
		}
		seen[m.ID] = true
	}

	for _, m := range machines {
		r.machinesMap[m.ID] = len(r.machines)
		r.machines = append(r.machines, *m)
	}
	return nil
}

// GetMachine returns a copy of the machine with the given id
func (r *MachineRepository) GetMachine(id string) (*entities.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.machinesMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownMachine, id)
	}
	m := r.machines[index]
	return &m, nil
}

// GetAllMachines returns copies of all machines in load order
func (r *MachineRepository) GetAllMachines() ([]*entities.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	machines := make([]*entities.Machine, 0, len(r.machines))
	for i := range r.machines {
		m := r.machines[i]
		machines = append(machines, &m)
	}
	return machines, nil
}
