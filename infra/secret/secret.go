package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Manager creates secrets readable by one service account.
type Manager struct {
	prov   *gcp.Provider
	svc    *projects.Service
	member pulumi.StringOutput
}

// SetupSecretManager enables the Secret Manager API for secrets that apiSA
// will read at startup.
func SetupSecretManager(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account) (*Manager, error) {
	svc, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service: pulumi.String("secretmanager.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	return &Manager{prov: prov, svc: svc, member: member}, nil
}

// Service is the enabled API, for resources that must wait on it.
func (m *Manager) Service() *projects.Service { return m.svc }

// AddSecret stores value under secretID and grants the service account
// access to that secret only. It returns the secret ID.
func (m *Manager) AddSecret(ctx *pulumi.Context, resourceName, secretID string, value pulumi.StringInput) (pulumi.StringOutput, error) {
	emptyString := pulumi.String("").ToStringOutput()

	s, err := secretmanager.NewSecret(ctx, resourceName, &secretmanager.SecretArgs{
		SecretId: pulumi.String(secretID),
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(m.prov),
		pulumi.DependsOn([]pulumi.Resource{m.svc}),
	)
	if err != nil {
		return emptyString, err
	}

	_, err = secretmanager.NewSecretVersion(ctx, resourceName+"Version", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: value,
	},
		pulumi.Provider(m.prov),
	)
	if err != nil {
		return emptyString, err
	}

	_, err = secretmanager.NewSecretIamMember(ctx, resourceName+"Accessor", &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member:   m.member,
	},
		pulumi.Provider(m.prov),
	)
	if err != nil {
		return emptyString, err
	}

	return s.SecretId, nil
}
