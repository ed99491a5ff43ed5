// Package logging provides structured logging for the arbitration engine and
// the scenario simulator.
//
// It wraps Go's log/slog to write JSON records with persistent context
// attributes (match, team, component), so a simulated match can be replayed
// from its log after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	matchLog := logger.WithMatch("skirmish-4p")
//	matchLog.WithTeam(2).Info("team state changed", "from", "contender", "to", "loser")
//
// Components that must not log in tests take [NopLogger].
//
// # Thread Safety
//
// [Logger] is safe for concurrent use. Child loggers created via With* methods
// share the underlying writer.
package logging
