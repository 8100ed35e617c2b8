package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	pointsapp "github.com/jackyeh168/channel_points/src/internal/application/points"
	rewardapp "github.com/jackyeh168/channel_points/src/internal/application/reward"
	userapp "github.com/jackyeh168/channel_points/src/internal/application/user"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/interfaces/httpapi"
)

// Catalog 初始資料
type Catalog struct {
	Categories []CategorySeed `yaml:"categories"`
	Rewards    []RewardSeed   `yaml:"rewards"`
	Users      []UserSeed     `yaml:"users"`
}

// CategorySeed 分類
type CategorySeed struct {
	Name      string `yaml:"name"`
	Icon      string `yaml:"icon"`
	Color     string `yaml:"color"`
	SortOrder int    `yaml:"sort_order"`
}

// RewardSeed 獎勵；Category 以名稱參照
type RewardSeed struct {
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	Cost         int            `yaml:"cost"`
	ActionType   string         `yaml:"action_type"`
	ActionConfig map[string]any `yaml:"action_config"`
	Tier         string         `yaml:"tier"`
	Active       *bool          `yaml:"active"`
	Category     string         `yaml:"category"`
}

// UserSeed 使用者；Points 只在首次建立時入帳
type UserSeed struct {
	ExternalID  string `yaml:"external_id"`
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	Points      int    `yaml:"points"`
	Premium     bool   `yaml:"premium"`
	Admin       bool   `yaml:"admin"`
	Owner       bool   `yaml:"owner"`
}

// LoadCatalog 讀取 YAML 檔
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog 解析 YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i, rw := range c.Rewards {
		if rw.Title == "" {
			return nil, fmt.Errorf("reward %d: title is required", i)
		}
	}
	for i, u := range c.Users {
		if u.ExternalID == "" {
			return nil, fmt.Errorf("user %d: external_id is required", i)
		}
	}
	return &c, nil
}

// SeedReport 寫入結果
type SeedReport struct {
	Categories int
	Rewards    int
	Users      int
	Skipped    int
}

// Apply 寫入資料；可重複執行
//
// 已存在的分類（同名）、獎勵（同名）與使用者（同外部身分）會略過，
// 使用者的身分旗標每次都會同步。
func (c *Catalog) Apply(ctx context.Context, uc httpapi.UseCases, logger *slog.Logger) (*SeedReport, error) {
	report := &SeedReport{}

	// Step 1: 分類
	categoryIDs := map[string]string{}
	existing, err := uc.ListCategories.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for _, cat := range existing {
		categoryIDs[cat.Name] = cat.CategoryID
	}
	for _, cat := range c.Categories {
		if _, ok := categoryIDs[cat.Name]; ok {
			report.Skipped++
			continue
		}
		out, err := uc.CreateCategory.Execute(ctx, rewardapp.CreateCategoryCommand{
			Name:      cat.Name,
			Icon:      cat.Icon,
			Color:     cat.Color,
			SortOrder: cat.SortOrder,
		})
		if err != nil && !errors.Is(err, reward.ErrCategoryAlreadyExists) {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		if out != nil {
			categoryIDs[cat.Name] = out.CategoryID
			report.Categories++
		}
	}

	// Step 2: 獎勵
	rewards, err := uc.ListRewards.Execute(ctx, rewardapp.ListRewardsQuery{})
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	titles := map[string]bool{}
	for _, rw := range rewards {
		titles[rw.Title] = true
	}
	for _, rw := range c.Rewards {
		if titles[rw.Title] {
			report.Skipped++
			continue
		}
		fields, err := rw.fields(categoryIDs)
		if err != nil {
			return nil, err
		}
		if _, err := uc.CreateReward.Execute(ctx, rewardapp.CreateRewardCommand{RewardFields: fields}); err != nil {
			return nil, fmt.Errorf("reward %q: %w", rw.Title, err)
		}
		titles[rw.Title] = true
		report.Rewards++
	}

	// Step 3: 使用者
	for _, u := range c.Users {
		res, err := uc.EnsureUser.Execute(ctx, userapp.EnsureUserCommand{
			ExternalID:  u.ExternalID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
		})
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.ExternalID, err)
		}
		if !res.Created {
			report.Skipped++
		} else {
			report.Users++
			if u.Points > 0 {
				if _, err := uc.GivePoints.Execute(ctx, pointsapp.GivePointsCommand{
					UserID:      res.User.UserID,
					Amount:      u.Points,
					Description: "Initial balance",
				}); err != nil {
					return nil, fmt.Errorf("user %q points: %w", u.ExternalID, err)
				}
			}
		}

		premium, admin, owner := u.Premium, u.Admin, u.Owner
		if _, err := uc.UpdateRoles.Execute(ctx, userapp.UpdateRolesCommand{
			UserID:    res.User.UserID,
			IsPremium: &premium,
			IsAdmin:   &admin,
			IsOwner:   &owner,
		}); err != nil {
			return nil, fmt.Errorf("user %q roles: %w", u.ExternalID, err)
		}
	}

	logger.Info("catalog applied",
		"categories", report.Categories,
		"rewards", report.Rewards,
		"users", report.Users,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (rw RewardSeed) fields(categoryIDs map[string]string) (rewardapp.RewardFields, error) {
	config := rw.ActionConfig
	if config == nil {
		config = map[string]any{}
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return rewardapp.RewardFields{}, fmt.Errorf("reward %q action_config: %w", rw.Title, err)
	}

	fields := rewardapp.RewardFields{
		Title:        rw.Title,
		Description:  rw.Description,
		Cost:         rw.Cost,
		ActionType:   rw.ActionType,
		ActionConfig: raw,
		Tier:         rw.Tier,
		IsActive:     rw.Active,
	}
	if rw.Category != "" {
		id, ok := categoryIDs[rw.Category]
		if !ok {
			return rewardapp.RewardFields{}, fmt.Errorf("reward %q: unknown category %q", rw.Title, rw.Category)
		}
		fields.CategoryID = &id
	}
	return fields, nil
}
