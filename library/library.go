// 烘焙记录库，同名保存会整体替换旧记录
package library

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"roastsim/conf"
	"roastsim/model"
)

var ErrNotFound = errors.New("roast not found")

type Repository interface {
	Save(record *model.RoastRecord) error
	Get(name string) (*model.RoastRecord, error)
	// 按创建顺序返回
	List() ([]*model.RoastRecord, error)
	Delete(name string) error
	Clear() error
	Close() error
}

// 按配置选择存储后端
func Open(c conf.LibraryConfig) (Repository, error) {
	log.WithFields(log.Fields{
		"driver": c.Driver,
		"path":   c.Path,
	}).Info("打开烘焙记录库")
	switch c.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(c.Path)
	}
	return nil, fmt.Errorf("unknown library driver %q", c.Driver)
}

func validRecord(record *model.RoastRecord) error {
	if record == nil || record.Name == "" {
		return &model.ParameterError{Field: "name", Value: "", Reason: "roast needs a name"}
	}
	return nil
}
