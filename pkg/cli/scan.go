package cli

import (
	"fmt"
	"os"

	"github.com/convox/stdcli"
	"github.com/trailwatch/trailwatch/pkg/cloudtrail"
	"github.com/trailwatch/trailwatch/pkg/helpers"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

func init() {
	register("scan", "run rules against digests in a bucket", Scan, stdcli.CommandOptions{
		Flags: []stdcli.Flag{
			flagRules,
			flagPost,
			stdcli.StringFlag("bucket", "b", "bucket name"),
			stdcli.StringFlag("prefix", "", "key prefix"),
		},
		Validate: stdcli.Args(0),
	})
}

func Scan(e *Engine, c *stdcli.Context) error {
	bucket := helpers.CoalesceString(c.String("bucket"), os.Getenv("BUCKET"))
	if bucket == "" {
		return fmt.Errorf("bucket required")
	}

	rs, err := loadRules(c)
	if err != nil {
		return err
	}

	s := e.storage()

	keys, err := s.ObjectList(bucket, c.String("prefix"))
	if err != nil {
		return err
	}

	aa := []*structs.Alert{}

	for _, key := range keys {
		r, err := s.ObjectFetch(bucket, key)
		if err != nil {
			return err
		}

		d, err := cloudtrail.Decode(r)
		r.Close()
		if err != nil {
			c.Writer().Errorf("skipping %s: %s", key, err)
			continue
		}

		for _, rec := range d.Records {
			for _, rule := range rs.Match(rec) {
				aa = append(aa, rule.Alert(rec))
			}
		}
	}

	return report(e, c, aa)
}
