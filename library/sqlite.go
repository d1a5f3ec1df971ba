package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"roastsim/model"
)

const roastTable = `
CREATE TABLE IF NOT EXISTS roasts (
	name TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	variant TEXT NOT NULL,
	parameters TEXT NOT NULL,
	series TEXT NOT NULL,
	metrics TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// sqlite 单写
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(roastTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create roasts table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(record *model.RoastRecord) error {
	if err := validRecord(record); err != nil {
		return err
	}
	params, err := json.Marshal(record.Parameters)
	if err != nil {
		return err
	}
	series, err := json.Marshal(record.Series)
	if err != nil {
		return err
	}
	metrics, err := json.Marshal(record.Metrics)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO roasts (name, id, variant, parameters, series, metrics, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Name, record.ID, record.Variant.String(), string(params), string(series), string(metrics), record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save roast %q: %w", record.Name, err)
	}
	log.WithFields(log.Fields{
		"name":    record.Name,
		"variant": record.Variant.String(),
	}).Debug("烘焙记录已保存")
	return nil
}

func (s *SQLiteStore) Get(name string) (*model.RoastRecord, error) {
	row := s.db.QueryRow(`SELECT name, id, variant, parameters, series, metrics, created_at FROM roasts WHERE name = ?`, name)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return record, err
}

func (s *SQLiteStore) List() ([]*model.RoastRecord, error) {
	rows, err := s.db.Query(`SELECT name, id, variant, parameters, series, metrics, created_at FROM roasts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.RoastRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM roasts WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM roasts`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*model.RoastRecord, error) {
	var (
		record                           model.RoastRecord
		variant, params, series, metrics string
		createdAt                        time.Time
	)
	if err := row.Scan(&record.Name, &record.ID, &variant, &params, &series, &metrics, &createdAt); err != nil {
		return nil, err
	}
	v, err := model.ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	record.Variant = v
	record.CreatedAt = createdAt
	if err := json.Unmarshal([]byte(params), &record.Parameters); err != nil {
		return nil, fmt.Errorf("decode parameters of %q: %w", record.Name, err)
	}
	if err := json.Unmarshal([]byte(series), &record.Series); err != nil {
		return nil, fmt.Errorf("decode series of %q: %w", record.Name, err)
	}
	if err := json.Unmarshal([]byte(metrics), &record.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics of %q: %w", record.Name, err)
	}
	return &record, nil
}
