package random

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ecore/random", "random instance generation")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
