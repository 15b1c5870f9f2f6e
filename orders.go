package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSV header names of the order feed.
const (
	columnOrderNumber = "Order number"
	columnHead        = "Head"
	columnBody        = "Body"
	columnLegs        = "Legs"
	columnAddress     = "Address"
)

// OrderRow is one robot configuration read from the order feed.
type OrderRow struct {
	OrderNumber int
	Head        string
	Body        int
	Legs        string
	Address     string
}

// HeadName resolves the row's head code. ok is false when the code has no
// catalog entry; the caller still submits, with an empty selection.
func (o OrderRow) HeadName(catalog map[string]string) (name string, ok bool) {
	name, ok = catalog[o.Head]
	return name, ok
}

// ReadOrders parses the order feed at path, preserving row order.
func ReadOrders(path string) ([]OrderRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseOrders(f)
}

func parseOrders(r io.Reader) ([]OrderRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("order feed is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order feed header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range []string{columnOrderNumber, columnHead, columnBody, columnLegs, columnAddress} {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("order feed is missing column %q", name)
		}
	}

	var orders []OrderRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order feed line %d: %w", line, err)
		}

		order, err := orderFromRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("order feed line %d: %w", line, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func orderFromRecord(record []string, index map[string]int) (OrderRow, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[index[name]])
	}

	number, err := strconv.Atoi(field(columnOrderNumber))
	if err != nil {
		return OrderRow{}, fmt.Errorf("invalid order number %q: %w", field(columnOrderNumber), err)
	}

	body, err := strconv.Atoi(field(columnBody))
	if err != nil {
		return OrderRow{}, fmt.Errorf("invalid body %q: %w", field(columnBody), err)
	}
	if body < 1 {
		return OrderRow{}, fmt.Errorf("body index must be 1-based, got %d", body)
	}

	return OrderRow{
		OrderNumber: number,
		Head:        field(columnHead),
		Body:        body,
		Legs:        field(columnLegs),
		Address:     field(columnAddress),
	}, nil
}
