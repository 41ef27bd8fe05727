package util

import (
	"errors"
	"fmt"
	"strconv"
)

// ParseID 解析路径中的正整数 ID，0 不是合法 ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

// ParseModuleIndex 解析从 0 开始的模块下标
func ParseModuleIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse module index %q: %w", s, err)
	}
	if index < 0 {
		return 0, fmt.Errorf("module index %d is negative", index)
	}
	return index, nil
}
