package utils

import (
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// AuthConfig lists who may run administrative commands such as
// /lfg setup.
type AuthConfig struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"adminRoles"`
}

// Auth provides methods for authorization checks.
type Auth struct {
	config AuthConfig
}

// NewAuth creates a new Auth instance with the loaded configuration.
func NewAuth() (*Auth, error) {
	var config AuthConfig
	if err := viper.UnmarshalKey("auth", &config); err != nil {
		return nil, err
	}
	return &Auth{config: config}, nil
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.config.Developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// IsAdmin checks if a member carries one of the configured admin roles
// or has the guild's Manage Server permission.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionManageGuild != 0 {
		return true
	}
	for _, adminRoleID := range a.config.AdminsRoles {
		for _, userRoleID := range member.Roles {
			if userRoleID == adminRoleID {
				return true
			}
		}
	}
	return false
}

// CanSetup checks whether the interaction's author may configure the
// LFG plugin for the guild.
func (a *Auth) CanSetup(i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	return a.IsDeveloper(i.Member.User.ID) || a.IsAdmin(i.Member)
}
