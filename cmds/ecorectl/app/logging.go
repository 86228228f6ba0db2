package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ecore/cli", "ecore command line tool")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// SetupLogging enables the given log level for all
// ecore realms.
func SetupLogging(level string) error {
	if level == "" {
		return nil
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	lctx := logging.DefaultContext()
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("ecore")))
	return nil
}
