package ecoreutil

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ecore/ecoreutil", "object graph utilities")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
