/*
Package window implements the desktop window manager.

Each window carries two independent bits, minimized and maximized, so a
window can be maximized and later minimized and comes back maximized. At most
one window is active and the active window is never minimized.

Stacking uses a global counter that starts at BaseZIndex and is incremented
and assigned on open, focus and maximize. Values are never copied between
windows, so z-order is a strict total order.

	wm := window.NewManager(registry.Default())
	term, _ := wm.Open("terminal", nil)  // x=y=50, z=11
	wm.Open("terminal", nil)             // x=y=80, z=12, active
	wm.Focus(term.ID)                    // z=13, active
*/
package window
