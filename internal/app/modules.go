package app

import (
	"github.com/specialistvlad/blockplace/internal/plugin"
	"github.com/specialistvlad/blockplace/modules/search"
	"github.com/specialistvlad/blockplace/modules/system"
)

// coreModules is the definitive list of all block modules compiled into the
// blockplace binary.
var coreModules = []plugin.Module{
	&system.Module{},
	&search.Module{},
}
