package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/storage"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/flowadmin/infra/common"
	"github.com/GregMSThompson/flowadmin/infra/secret"
)

type secretRefs struct {
	supabaseKeyName       pulumi.StringOutput
	supabaseJWTSecretName pulumi.StringOutput
}

func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, bucket *storage.Bucket, res ...pulumi.Resource) (*serviceaccount.Account, error) {
	img, err := buildApiImage(ctx, res...)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	apiSA, err := createServiceAccount(ctx, prov, bucket)
	if err != nil {
		return nil, err
	}

	sm, err := secret.SetupSecretManager(ctx, prov, apiSA)
	if err != nil {
		return nil, err
	}

	sr, err := createSecrets(ctx, sm)
	if err != nil {
		return nil, err
	}

	svc, err := createCloudRunService(ctx, img, apiSA, bucket, sr, prov, srv, sm.Service())
	if err != nil {
		return nil, err
	}

	err = setIAMAccessPolicy(ctx, svc, prov)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

func buildApiImage(ctx *pulumi.Context, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	hash, err := common.GenerateHash("../")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),                    // build from repo root
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"), // Dockerfile path relative to repo root
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/api/flowadmin-api:%s", region, projectID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createServiceAccount(ctx *pulumi.Context, prov *gcp.Provider, bucket *storage.Bucket) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("flowadmin-api"),
		DisplayName: pulumi.String("flowadmin API Service Account"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}
	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	projectRoles := map[string]string{
		"firestoreAccess": "roles/datastore.user",               // Firestore read/write
		"firebaseAuth":    "roles/firebaseauth.admin",           // list users, set claims
		"firebaseFCM":     "roles/firebasecloudmessaging.admin", // push notifications
	}
	for name, role := range projectRoles {
		_, err = projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Role:    pulumi.String(role),
			Member:  member,
			Project: pulumi.String(projectID),
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	_, err = storage.NewBucketIAMMember(ctx, "uploadBucketWriter", &storage.BucketIAMMemberArgs{
		Bucket: bucket.Name,
		Role:   pulumi.String("roles/storage.objectAdmin"),
		Member: member,
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	bucket *storage.Bucket,
	sr *secretRefs,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "flowadmin")

	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")
	minScale := crCfg.Require("minScale")
	maxScale := crCfg.Require("maxScale")
	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	logLevel := crCfg.Require("logLevel")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	env := func(name, value string) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
		return &cloudrun.ServiceTemplateSpecContainerEnvArgs{Name: pulumi.String(name), Value: pulumi.String(value)}
	}
	secretEnv := func(name string, secretID pulumi.StringOutput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
		return &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name: pulumi.String(name),
			ValueFrom: &cloudrun.ServiceTemplateSpecContainerEnvValueFromArgs{
				SecretKeyRef: &cloudrun.ServiceTemplateSpecContainerEnvValueFromSecretKeyRefArgs{
					Name: secretID,
					Key:  pulumi.String("latest"),
				},
			},
		}
	}

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{

			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				// ---- AUTOSCALING + INSTANCE SIZE ----
				Annotations: pulumi.StringMap{
					// Autoscaling bounds
					"autoscaling.knative.dev/minScale": pulumi.String(minScale),
					"autoscaling.knative.dev/maxScale": pulumi.String(maxScale),

					// Instance sizing
					"run.googleapis.com/cpu":    pulumi.String(cpu),
					"run.googleapis.com/memory": pulumi.String(memory),

					// Allow throttling when idle (reduces cost)
					"run.googleapis.com/cpu-throttling": pulumi.String("true"),

					// Set the number of concurrent requests per container
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: cloudrun.ServiceTemplateSpecContainerEnvArray{
							env("PROJECTID", projectID),
							env("REGION", region),
							env("LOGLEVEL", logLevel),
							env("ALLOWEDORIGINS", appCfg.Get("allowedOrigins")),
							env("REQUIREVERIFIEDEMAIL", appCfg.Get("requireVerifiedEmail")),
							env("AVATARPLACEHOLDERURL", appCfg.Get("avatarPlaceholderUrl")),
							env("DEEPLINKURI", appCfg.Get("deepLinkUri")),
							env("SUPABASEURL", appCfg.Require("supabaseUrl")),
							env("SUPABASEPROJECTREF", appCfg.Require("supabaseProjectRef")),
							&cloudrun.ServiceTemplateSpecContainerEnvArgs{
								Name:  pulumi.String("STORAGEBUCKET"),
								Value: bucket.Name,
							},
							secretEnv("SUPABASEKEY", sr.supabaseKeyName),
							secretEnv("SUPABASEJWTSECRET", sr.supabaseJWTSecretName),
						},
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	// The API checks Firebase tokens itself; /configure and /webpages are public.
	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}

func createSecrets(ctx *pulumi.Context, sm *secret.Manager) (*secretRefs, error) {
	var err error
	sr := new(secretRefs)

	appCfg := config.New(ctx, "flowadmin")
	supabaseKey := appCfg.RequireSecret("supabaseKey")
	jwtSecret := appCfg.RequireSecret("supabaseJwtSecret")

	sr.supabaseKeyName, err = sm.AddSecret(ctx, "supabaseKeySecret", "supabaseKey", supabaseKey)
	if err != nil {
		return nil, err
	}

	sr.supabaseJWTSecretName, err = sm.AddSecret(ctx, "supabaseJwtSecretSecret", "supabaseJwtSecret", jwtSecret)
	if err != nil {
		return nil, err
	}

	return sr, nil
}
