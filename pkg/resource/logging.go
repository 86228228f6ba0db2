package resource

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ecore/resource", "in-memory resources")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
