package vdom

// Module registers global hooks that run for every node the engine
// touches, in addition to that node's own per-node hooks: Create,
// Update and Remove run before the node's own hook of the same name,
// Destroy runs after it. A module leaves any hook it doesn't care
// about nil.
type Module struct {
	Pre     func()
	Create  func(oldVnode, vnode *VNode)
	Update  func(oldVnode, vnode *VNode)
	Remove  func(vnode *VNode, rm func())
	Destroy func(vnode *VNode)
	Post    func()
}

type hookLists struct {
	pre     []func()
	create  []func(oldVnode, vnode *VNode)
	update  []func(oldVnode, vnode *VNode)
	remove  []func(vnode *VNode, rm func())
	destroy []func(vnode *VNode)
	post    []func()
}

func buildHooks(modules []Module) hookLists {
	var h hookLists
	for _, m := range modules {
		if m.Pre != nil {
			h.pre = append(h.pre, m.Pre)
		}
		if m.Create != nil {
			h.create = append(h.create, m.Create)
		}
		if m.Update != nil {
			h.update = append(h.update, m.Update)
		}
		if m.Remove != nil {
			h.remove = append(h.remove, m.Remove)
		}
		if m.Destroy != nil {
			h.destroy = append(h.destroy, m.Destroy)
		}
		if m.Post != nil {
			h.post = append(h.post, m.Post)
		}
	}
	return h
}
