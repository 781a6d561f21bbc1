// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-page/internal/scholar"
	"github.com/pdiddy/scholar-page/internal/secrets"
	"github.com/pdiddy/scholar-page/pkg/types"
)

// Config keys. Flags are bound to these keys when their command runs, so
// a flag overrides the config file, which overrides the environment.
const (
	keyProfileID       = "profile.id"
	keyName            = "profile.name"
	keyAliases         = "profile.aliases"
	keyMatchInitials   = "profile.match_initials"
	keyOutput          = "page.output"
	keyTemplate        = "page.template"
	keyAwards          = "page.awards"
	keyInput           = "page.input"
	keyCSL             = "export.csl"
	keySQLite          = "export.sqlite"
	keyUseProxy        = "proxy.enabled"
	keyProxyURLs       = "proxy.urls"
	keyDetails         = "fetch.details"
	keyTimeout         = "fetch.timeout"
	keyUserAgent       = "fetch.user_agent"
	keyPageSize        = "fetch.page_size"
	keyRequestInterval = "fetch.request_interval"
)

func init() {
	viper.SetDefault(keyDetails, true)
	viper.SetDefault(keyPageSize, scholar.DefaultPageSize)
	viper.SetDefault(keyRequestInterval, scholar.DefaultRequestInterval)
}

// bindFlags binds the named flags of cmd to config keys. Binding happens at
// run time because several commands share keys.
func bindFlags(cmd *cobra.Command, bindings map[string]string) error {
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// fetchConfig resolves fetch settings from viper and the loaded secrets.
func fetchConfig() types.FetchConfig {
	proxies := viper.GetStringSlice(keyProxyURLs)
	proxies = append(proxies, secrets.ProxyURLs(loadedSecrets)...)
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration(keyTimeout),
			UserAgent: viper.GetString(keyUserAgent),
		},
		ProfileID:       viper.GetString(keyProfileID),
		UseProxy:        viper.GetBool(keyUseProxy),
		ProxyURLs:       proxies,
		FillDetails:     viper.GetBool(keyDetails),
		PageSize:        viper.GetInt(keyPageSize),
		RequestInterval: viper.GetDuration(keyRequestInterval),
	}
}

// pipelineConfig resolves the full generate configuration.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Fetch: fetchConfig(),
		Page: types.PageConfig{
			Highlight: types.HighlightConfig{
				Name:          viper.GetString(keyName),
				Aliases:       viper.GetStringSlice(keyAliases),
				MatchInitials: viper.GetBool(keyMatchInitials),
			},
			OutputPath:   viper.GetString(keyOutput),
			TemplatePath: viper.GetString(keyTemplate),
			AwardsPath:   viper.GetString(keyAwards),
			InputPath:    viper.GetString(keyInput),
			CSLPath:      viper.GetString(keyCSL),
			SQLitePath:   viper.GetString(keySQLite),
		},
	}
}
