// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, msg string, v ...interface{}) {
	tb.Helper()
	require.Truef(tb, condition, msg, v...)
}

// AssertFalse fails the test if the condition is true.
func AssertFalse(tb testing.TB, condition bool, msg string, v ...interface{}) {
	tb.Helper()
	require.Falsef(tb, condition, msg, v...)
}

// Ok fails the test if an err is not nil.
func Ok(tb testing.TB, err error) {
	tb.Helper()
	require.NoError(tb, err)
}

// Nok fails the test if an err is nil.
func Nok(tb testing.TB, err error) {
	tb.Helper()
	require.Error(tb, err)
}

// ErrIs fails the test if err does not wrap target.
func ErrIs(tb testing.TB, err error, target error) {
	tb.Helper()
	require.ErrorIs(tb, err, target)
}

// Equals fails the test if exp is not equal to act.
func Equals(tb testing.TB, exp, act interface{}) {
	tb.Helper()
	require.Equal(tb, exp, act)
}
