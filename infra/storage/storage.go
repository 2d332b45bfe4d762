package storage

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/storage"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupUploadBucket creates the bucket that backs image uploads. Objects are
// publicly readable so upload URLs can be embedded in app content.
func SetupUploadBucket(ctx *pulumi.Context, prov *gcp.Provider) (*storage.Bucket, error) {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	bucket, err := storage.NewBucket(ctx, "uploadBucket", &storage.BucketArgs{
		Location:                 pulumi.String(region),
		UniformBucketLevelAccess: pulumi.Bool(true),
		Cors: storage.BucketCorArray{
			&storage.BucketCorArgs{
				Origins:         pulumi.StringArray{pulumi.String("*")},
				Methods:         pulumi.StringArray{pulumi.String("GET")},
				MaxAgeSeconds:   pulumi.Int(3600),
				ResponseHeaders: pulumi.StringArray{pulumi.String("Content-Type")},
			},
		},
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = storage.NewBucketIAMMember(ctx, "uploadBucketPublicRead", &storage.BucketIAMMemberArgs{
		Bucket: bucket.Name,
		Role:   pulumi.String("roles/storage.objectViewer"),
		Member: pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return bucket, nil
}
