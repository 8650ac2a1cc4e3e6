package app

import (
	"github.com/packplan/packplan/internal/kinds"
	"github.com/packplan/packplan/internal/registry"
)

// coreKinds is the definitive list of module kinds compiled into the
// packplan binary.
var coreKinds = []registry.Module{
	kinds.Bundle{},
	kinds.Archive{},
	kinds.BOM{},
	kinds.Feature{},
}
