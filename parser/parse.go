package parser

import (
	"cs-balancer/errors"
	"cs-balancer/metrics"
	"cs-balancer/models"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Record kinds accepted in the first column.
const (
	KindCustomerSuccess = "cs"
	KindCustomer        = "customer"
	KindAway            = "away"
)

var validate = validator.New()

// Parse reads CSV data from the reader and returns the balancing input.
// Lines starting with '#' are comments. Every other line starts with a
// record kind (case-insensitive):
//
//	cs, <id>, <score>
//	customer, <id>, <score>
//	away, <id>[, <id>...]
//
// Representative ids must be unique and positive; scores must not be
// negative. Records keep their file order, which decides ties between
// equally close representatives.
func Parse(r io.Reader) (*models.Input, error) {
	start := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	input := &models.Input{}
	seen := make(map[int]int)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		lineNum, _ := reader.FieldPos(0)

		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			return nil, newParseError(lineNum, record, errors.ErrEmptyRecord)
		}

		switch kind := strings.ToLower(strings.TrimSpace(record[0])); kind {
		case KindCustomerSuccess:
			id, score, err := parseIDScore(record)
			if err != nil {
				return nil, newParseError(lineNum, record, err)
			}
			cs := models.CustomerSuccess{ID: id, Score: score}
			if err := validateRecord(cs); err != nil {
				return nil, newParseError(lineNum, record, err)
			}
			if first, ok := seen[id]; ok {
				return nil, newParseError(lineNum, record,
					fmt.Errorf("%w: %d already defined at line %d", errors.ErrDuplicateID, id, first))
			}
			seen[id] = lineNum
			input.CustomerSuccess = append(input.CustomerSuccess, cs)

		case KindCustomer:
			id, score, err := parseIDScore(record)
			if err != nil {
				return nil, newParseError(lineNum, record, err)
			}
			customer := models.Customer{ID: id, Score: score}
			if err := validateRecord(customer); err != nil {
				return nil, newParseError(lineNum, record, err)
			}
			input.Customers = append(input.Customers, customer)

		case KindAway:
			if len(record) < 2 {
				return nil, newParseError(lineNum, record, errors.ErrInvalidFieldCount)
			}
			for _, field := range record[1:] {
				id, err := strconv.Atoi(strings.TrimSpace(field))
				if err != nil {
					return nil, newParseError(lineNum, record, fmt.Errorf("%w: %v", errors.ErrInvalidID, err))
				}
				if err := validate.Var(id, "gt=0"); err != nil {
					return nil, newParseError(lineNum, record, fmt.Errorf("%w: %d must be positive", errors.ErrInvalidID, id))
				}
				input.Away = append(input.Away, id)
			}

		default:
			return nil, newParseError(lineNum, record, fmt.Errorf("%w: %q", errors.ErrUnknownRecordKind, kind))
		}

		metrics.ParserRecordsTotal.Inc()
	}

	return input, nil
}

// parseIDScore reads the id and score columns of a cs or customer record.
func parseIDScore(record []string) (int, int, error) {
	if len(record) != 3 {
		return 0, 0, errors.ErrInvalidFieldCount
	}

	id, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errors.ErrInvalidID, err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errors.ErrInvalidScore, err)
	}
	return id, score, nil
}

// validateRecord applies the struct tags on the model and maps the first
// failing field to a parse sentinel.
func validateRecord(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	if fe.Field() == "Score" {
		return fmt.Errorf("%w: %v fails %s=%s", errors.ErrInvalidScore, fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %v fails %s=%s", errors.ErrInvalidID, fe.Value(), fe.Tag(), fe.Param())
}

func newParseError(line int, record []string, err error) *errors.ParseError {
	metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
	return &errors.ParseError{
		Line:   line,
		Record: record,
		Err:    err,
	}
}

// errorType maps an error to the error_type metric label.
func errorType(err error) string {
	for label, target := range map[string]error{
		"field_count":  errors.ErrInvalidFieldCount,
		"record_kind":  errors.ErrUnknownRecordKind,
		"invalid_id":   errors.ErrInvalidID,
		"score":        errors.ErrInvalidScore,
		"duplicate_id": errors.ErrDuplicateID,
		"empty_record": errors.ErrEmptyRecord,
	} {
		if errors.Is(err, target) {
			return label
		}
	}
	return "other"
}
