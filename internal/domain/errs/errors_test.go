// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSentinels(t *testing.T) {
	err := fmt.Errorf("measure: %w", Parse("a.go", 3, errors.New("expected ';'")))

	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, "parse a.go:3: expected ';'", errors.Unwrap(err).Error())
}

func TestThresholdExceededIsDistinct(t *testing.T) {
	err := ThresholdExceeded("complexity 25 > 20")

	assert.ErrorIs(t, err, ErrThresholdExceeded)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := IO("b.go", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "io b.go: permission denied", err.Error())
}
