package main

import (
	"fmt"
	"strconv"
	"strings"
)

// extraSelection is one -extra id=qty flag
type extraSelection struct {
	ID       uint
	Quantity int
}

// extraFlags collects repeated -extra flags
type extraFlags []extraSelection

func (f *extraFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, sel := range *f {
		parts = append(parts, fmt.Sprintf("%d=%d", sel.ID, sel.Quantity))
	}
	return strings.Join(parts, ",")
}

func (f *extraFlags) Set(value string) error {
	idPart, qtyPart, found := strings.Cut(value, "=")
	if !found {
		qtyPart = "1"
	}

	id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid extra id %q", idPart)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyPart))
	if err != nil || qty < 1 {
		return fmt.Errorf("invalid extra quantity %q", qtyPart)
	}

	*f = append(*f, extraSelection{ID: uint(id), Quantity: qty})
	return nil
}
