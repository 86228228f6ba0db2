package ecore

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ecore", "reflective object runtime")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
