package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/flowadmin/infra/cloudrun"
	"github.com/GregMSThompson/flowadmin/infra/docker"
	"github.com/GregMSThompson/flowadmin/infra/firestore"
	"github.com/GregMSThompson/flowadmin/infra/identity"
	"github.com/GregMSThompson/flowadmin/infra/provider"
	"github.com/GregMSThompson/flowadmin/infra/storage"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service to allow using firebase
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// bucket for image uploads
		bucket, err := storage.SetupUploadBucket(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, bucket, ident, db, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
