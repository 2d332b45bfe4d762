package identity

import (
	"strings"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupIdentity enables Identity Platform (Firebase Auth) with email sign-in.
// flowadmin:authorizedDomains adds the dashboard hosts that may sign in.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	appCfg := config.New(ctx, "flowadmin")

	domains := pulumi.StringArray{pulumi.String("localhost")}
	for _, d := range strings.Split(appCfg.Get("authorizedDomains"), ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, pulumi.String(d))
		}
	}

	return identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			AuthorizedDomains: domains,
			SignIn: &identityplatform.ConfigSignInArgs{
				Email: &identityplatform.ConfigSignInEmailArgs{
					Enabled:          pulumi.Bool(true),
					PasswordRequired: pulumi.Bool(true),
				},
			},
		},
		pulumi.Provider(prov),
	)
}
