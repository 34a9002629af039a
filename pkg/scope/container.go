package scope

import (
	"github.com/odvcencio/navkit/pkg/navtree"
)

// Builder constructs a container node (a Tab or Pane, typically) the
// first time a destination inside it is navigated to. The engine
// supplies the generated container key and the parent key the container
// will live under.
type Builder func(containerKey, parentKey string, initialIndex int) navtree.Node

// ContainerInfo describes the container a destination requires.
type ContainerInfo struct {
	// ScopeKey identifies the container's scope. If the active path
	// already holds a container with this scope key, no new container
	// is created.
	ScopeKey string

	// InitialIndex is passed to the builder (the tab index or pane
	// configuration variant to start on).
	InitialIndex int

	// Build constructs the container.
	Build Builder
}

// ContainerRegistry answers whether a destination must be wrapped in a
// container, and supplies the factory for building it.
type ContainerRegistry interface {
	// ContainerInfo returns the container requirement for dest, if any.
	ContainerInfo(dest navtree.Destination) (ContainerInfo, bool)
}

// EmptyContainers is a ContainerRegistry that never requires a
// container.
type EmptyContainers struct{}

// ContainerInfo always reports no container requirement.
func (EmptyContainers) ContainerInfo(navtree.Destination) (ContainerInfo, bool) {
	return ContainerInfo{}, false
}

// ContainerTable is a ContainerRegistry backed by an explicit
// kind-to-container table.
type ContainerTable struct {
	byKind map[string]ContainerInfo
}

// NewContainerTable creates an empty ContainerTable.
func NewContainerTable() *ContainerTable {
	return &ContainerTable{byKind: make(map[string]ContainerInfo)}
}

// Register associates a destination kind with a container requirement.
// Later registrations for the same kind replace earlier ones.
func (t *ContainerTable) Register(kind string, info ContainerInfo) {
	t.byKind[kind] = info
}

// ContainerInfo looks up the container requirement for dest's kind.
func (t *ContainerTable) ContainerInfo(dest navtree.Destination) (ContainerInfo, bool) {
	if dest == nil {
		return ContainerInfo{}, false
	}
	info, ok := t.byKind[dest.Kind()]
	return info, ok
}
