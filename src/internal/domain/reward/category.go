package reward

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Category 獎勵分類（僅供呈現分組，名稱唯一）
type Category struct {
	categoryID CategoryID
	name       string
	icon       string
	color      string
	sortOrder  int
	createdAt  time.Time
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor 是否為 #RRGGBB 格式
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// NewCategory 建立分類，color 空白時使用預設色
func NewCategory(name, icon, color string, sortOrder int) (*Category, error) {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n == 0 || n > 100 {
		return nil, ErrInvalidCategoryName.WithContext("name", name)
	}
	if color == "" {
		color = "#9146FF"
	}
	if !IsHexColor(color) {
		return nil, ErrInvalidCategoryColor.WithContext("color", color)
	}
	return &Category{
		categoryID: NewCategoryID(),
		name:       trimmed,
		icon:       strings.TrimSpace(icon),
		color:      color,
		sortOrder:  sortOrder,
		createdAt:  time.Now(),
	}, nil
}

// ReconstructCategory 從資料庫重建
func ReconstructCategory(id CategoryID, name, icon, color string, sortOrder int, createdAt time.Time) *Category {
	return &Category{
		categoryID: id,
		name:       name,
		icon:       icon,
		color:      color,
		sortOrder:  sortOrder,
		createdAt:  createdAt,
	}
}

func (c *Category) CategoryID() CategoryID { return c.categoryID }
func (c *Category) Name() string           { return c.name }
func (c *Category) Icon() string           { return c.icon }
func (c *Category) Color() string          { return c.color }
func (c *Category) SortOrder() int         { return c.sortOrder }
func (c *Category) CreatedAt() time.Time   { return c.createdAt }
