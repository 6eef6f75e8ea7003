package app

import (
	"context"
	"errors"
	"io"
	"reflect"
)

// CloserService 持有需要在退出时释放的资源（事件发布器、队列客户端）
type CloserService struct {
	name    string
	closers []io.Closer
}

// NewCloserService 创建资源释放服务，nil 资源会被忽略
func NewCloserService(name string, closers ...io.Closer) *CloserService {
	kept := make([]io.Closer, 0, len(closers))
	for _, closer := range closers {
		if isNilCloser(closer) {
			continue
		}
		kept = append(kept, closer)
	}
	return &CloserService{name: name, closers: kept}
}

// Name 服务名称
func (s *CloserService) Name() string {
	if s == nil || s.name == "" {
		return "closer"
	}
	return s.name
}

// Start 阻塞至上下文取消
func (s *CloserService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 依次关闭资源
func (s *CloserService) Stop(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, closer := range s.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isNilCloser(closer io.Closer) bool {
	if closer == nil {
		return true
	}
	value := reflect.ValueOf(closer)
	return value.Kind() == reflect.Ptr && value.IsNil()
}
