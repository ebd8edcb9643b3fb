// Package ledger reads delimited bank ledger exports into transactions.
package ledger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how ledger files are read.
type Options struct {
	Mapping   models.FieldMapping
	Delimiter rune
	// Reverse flips the row order of every file. Bank exports list the newest
	// entry first.
	Reverse bool
}

// DefaultOptions returns the options for a comma-delimited ING export.
func DefaultOptions() Options {
	return Options{
		Mapping:   models.DefaultFieldMapping(),
		Delimiter: ',',
		Reverse:   true,
	}
}

// Loader turns ledger files into transactions.
type Loader struct {
	options Options
	logger  logging.Logger
}

// NewLoader creates a Loader. A zero delimiter means comma.
func NewLoader(options Options, logger logging.Logger) *Loader {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Loader{options: options, logger: logger}
}

// Options returns the loader configuration.
func (l *Loader) Options() Options {
	return l.options
}

// Read parses a ledger with a header row. A record that cannot be converted
// aborts the read with a *parsererror.MalformedRecordError carrying its
// 1-based data row.
func (l *Loader) Read(r io.Reader) ([]*models.Transaction, error) {
	csvReader := csv.NewReader(skipBOM(r))
	csvReader.Comma = l.options.Delimiter

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("ledger is empty: a header row is required")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ledger header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var transactions []*models.Transaction
	for row := 1; ; row++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &parsererror.MalformedRecordError{Row: row, Reason: "unreadable record", Err: err}
		}

		values := make(map[string]string, len(header))
		for i, column := range header {
			values[column] = record[i]
		}

		tx, err := models.NewTransaction(values, l.options.Mapping)
		if err != nil {
			var malformed *parsererror.MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Row = row
			}
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if l.options.Reverse {
		slices.Reverse(transactions)
	}
	return transactions, nil
}

// LoadFile reads a single ledger file.
func (l *Loader) LoadFile(path string) ([]*models.Transaction, error) {
	start := time.Now()
	file, err := os.Open(path) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	transactions, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.WithFields(
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
	).Debug("Loaded ledger file")
	return transactions, nil
}

// LoadFiles reads several ledger files concurrently and concatenates their
// transactions in argument order. The first error cancels the remaining reads.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]*models.Transaction, error) {
	if len(paths) == 0 {
		return nil, errors.New("no ledger files given")
	}

	results := make([][]*models.Transaction, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			transactions, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = transactions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*models.Transaction
	for _, transactions := range results {
		all = append(all, transactions...)
	}

	l.logger.WithFields(
		logging.F(logging.FieldCount, len(all)),
		logging.F(logging.FieldFiles, len(paths)),
	).Info("Loaded ledger")
	return all, nil
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
