// Package build translates the netlist object model and the device catalog
// into the two graphs the PAR engine searches over. It defines the
// netlist-side port names (celltable.go); the device-side port names come
// from the site constructors in pkg/device. Both builders intern port names
// through one shared table, so that a required edge built from net
// connectivity and an available edge built from routing reachability
// compare equal only when both sides use the same port names.
package build

import (
	"fmt"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/label"
	"github.com/parforge/gopar/pkg/pargraph"
)

// Program owns the netlist graph, the device graph, the shared port table,
// and the label bookkeeping that keeps the two graphs in lockstep. One
// Program is built per solve and discarded at solver exit.
type Program struct {
	N, D  *pargraph.Graph
	Ports *pargraph.PortTable

	part      *device.Part
	labels    map[string]label.ID
	pinLabels map[int]label.ID
}

// NewProgram returns an empty Program targeting part.
func NewProgram(part *device.Part) *Program {
	return &Program{
		N:         pargraph.New(pargraph.Netlist),
		D:         pargraph.New(pargraph.Device),
		Ports:     pargraph.NewPortTable(),
		part:      part,
		labels:    make(map[string]label.ID),
		pinLabels: make(map[int]label.ID),
	}
}

// classLabel returns the label for a named compatibility class, allocating
// it in lockstep across N and D the first time it is requested by either
// builder. Both builders funnel through this method, so the same class
// name always yields the same label.ID regardless of which builder asked
// first.
func (p *Program) classLabel(desc string) label.ID {
	if id, ok := p.labels[desc]; ok {
		return id
	}
	id := pargraph.AllocateLockstep(p.N, p.D, desc)
	p.labels[desc] = id
	return id
}

// pinLabel returns the label unique to a physical IOB pin, so that a
// pin-specific netlist cell can only ever match the one device site bound
// to that pin.
func (p *Program) pinLabel(pin int) label.ID {
	if id, ok := p.pinLabels[pin]; ok {
		return id
	}
	id := p.classLabel(fmt.Sprintf("IOB@pin%d", pin))
	p.pinLabels[pin] = id
	return id
}
