package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseConfidenceInterval parses a confidence-interval literal: either a
// percentage ("95%") or a bare fraction ("0.95", ".95"). The percentage
// form is divided by 100 before validation. The result must lie strictly
// between 0 and 1.
func ParseConfidenceInterval(s string) (float64, error) {
	num, percent := strings.CutSuffix(s, "%")
	d, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(d) {
		return 0, errors.New("invalid confidence interval provided")
	}
	if percent {
		d /= 100
	}
	switch {
	case d <= 0:
		return 0, errors.New("confidence interval is negative")
	case d >= 1:
		return 0, errors.New("confidence interval is greater than 1")
	}
	return d, nil
}

// ParsePositive parses a strictly positive integer. quantity names the
// value in error text ("sample count must be positive").
func ParsePositive(quantity, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s provided", quantity)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", quantity)
	}
	return n, nil
}
