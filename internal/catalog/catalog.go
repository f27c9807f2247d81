package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

// Command is a catalog entry bound to the EC2 client.
type Command = cmdlet.Command[platform.API]

type operation[P, In, Out any] = cmdlet.Operation[platform.API, P, In, Out]

// Group is a resource family shown as a section in help output.
type Group struct {
	ID    string
	Title string
}

// Resource family identifiers.
const (
	GroupInstance = "instance"
	GroupVolume   = "volume"
	GroupNetwork  = "network"
	GroupVPN      = "vpn"
	GroupRouting  = "routing"
)

// Groups lists the families in display order.
func Groups() []Group {
	return []Group{
		{ID: GroupInstance, Title: "Instance Commands:"},
		{ID: GroupVolume, Title: "Volume and Snapshot Commands:"},
		{ID: GroupNetwork, Title: "VPC Networking Commands:"},
		{ID: GroupVPN, Title: "VPN Commands:"},
		{ID: GroupRouting, Title: "Routing Commands:"},
	}
}

// Operations returns every catalog entry, grouped by family.
func Operations() []Command {
	return slices.Concat(
		instanceOperations(),
		volumeOperations(),
		networkOperations(),
		vpnOperations(),
		routingOperations(),
	)
}

// call adapts an API method expression, such as platform.API.AttachVolume,
// to the shape cmdlet.Operation.Call expects.
func call[In, Out any](m func(platform.API, context.Context, *In, ...func(*ec2.Options)) (*Out, error)) func(context.Context, platform.API, *In) (*Out, error) {
	return func(ctx context.Context, c platform.API, in *In) (*Out, error) {
		return m(c, ctx, in)
	}
}

var errNothingToModify = errors.New("nothing to modify: pass at least one attribute to change")

// Shared parameter declarations.

func dryRunParam(dst **bool) *cmdlet.Param {
	return cmdlet.Bool(dst, "dry-run", "Check permissions without making the request")
}

func filterParam(dst *[]types.Filter) *cmdlet.Param {
	return cmdlet.Var(tags.NewFilterValue(dst), "filter", "Filter as Name=<name>,Values=<v1>,<v2>; repeatable").Alias("filters")
}

func tagParam(dst *[]types.Tag) *cmdlet.Param {
	return cmdlet.Var(tags.NewTagValue(dst), "tag", "Tag as Key=Value; repeatable").Alias("tags")
}

// joinIDs renders a list of resource identifiers for the confirmation prompt.
func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}
