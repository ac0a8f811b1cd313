package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nodenet-io/nodenet/pkg/cli"
	"github.com/nodenet-io/nodenet/pkg/gateway"
	"github.com/nodenet-io/nodenet/pkg/model"
)

// previewPersister satisfies gateway.Persister by printing what each
// write would do. It is the default sink; -x swaps in the real one.
type previewPersister struct{}

func preview(op string, detail string) {
	fmt.Printf("%s %s %s\n", cli.Yellow("would"), cli.Bold(op), detail)
}

func (previewPersister) UpdateInterface(ctx context.Context, node string, id int, p gateway.UpdateInterfaceParams) error {
	preview("update-interface", fmt.Sprintf("node=%s id=%d name=%s vlan=%d", node, id, p.Name, p.VLAN))
	return nil
}

func (previewPersister) LinkSubnet(ctx context.Context, node string, id int, p gateway.LinkSubnetParams) error {
	detail := fmt.Sprintf("node=%s id=%d mode=%s subnet=%d", node, id, p.Mode, p.Subnet)
	if p.LinkID >= 0 {
		detail += fmt.Sprintf(" link=%d", p.LinkID)
	} else {
		detail += " link=new"
	}
	if p.IPAddress != "" {
		detail += " ip=" + p.IPAddress
	}
	preview("link-subnet", detail)
	return nil
}

func (previewPersister) UnlinkSubnet(ctx context.Context, node string, id, linkID int) error {
	preview("unlink-subnet", fmt.Sprintf("node=%s id=%d link=%d", node, id, linkID))
	return nil
}

func (previewPersister) DeleteInterface(ctx context.Context, node string, id int) error {
	preview("delete-interface", fmt.Sprintf("node=%s id=%d", node, id))
	return nil
}

func (previewPersister) CreateVLANInterface(ctx context.Context, node string, p gateway.CreateVLANParams) error {
	preview("create-vlan", fmt.Sprintf("node=%s parent=%d vlan=%d mode=%s subnet=%d",
		node, p.Parent, p.VLAN, p.Mode, p.Subnet))
	return nil
}

func (previewPersister) CreateBondInterface(ctx context.Context, node string, p gateway.CreateBondParams) error {
	members := make([]string, len(p.Parents))
	for i, id := range p.Parents {
		members[i] = fmt.Sprint(id)
	}
	detail := fmt.Sprintf("node=%s name=%s members=[%s] vlan=%d mode=%s",
		node, p.Name, strings.Join(members, ","), p.VLAN, p.BondMode)
	if p.BondMode == model.BondMode8023AD {
		detail += " lacp-rate=" + string(p.LACPRate)
	}
	preview("create-bond", detail)
	return nil
}
