package domain

// PythonHeader is written at the top of every generated script.
//
// It imports numpy and matplotlib and defines the helpers that script bodies rely on:
//
//   - add_to_ea registers an artist in EXTRA_ARTISTS so savefig keeps it in the bounding box.
//   - get_colormap picks a colormap from COLORMAPS, wrapping around the list.
//   - maybe_create_ax3d allocates the shared 3D axes (AX3D) on first use.
//   - data_to_axis and axis_to_data convert between data and axis coordinates.
//   - set_equal_axes gives x, y and z the same scaling. The 3D case needs matplotlib >= 3.3.0.
//   - loop_wait blocks forever, for scripts that must keep a window open.
const PythonHeader = `### file generated by plotpy
import time
import numpy as np
import matplotlib.pyplot as plt
import matplotlib.ticker as tck
import matplotlib.patches as pat
import matplotlib.path as pth
import matplotlib.patheffects as pff
import matplotlib.lines as lns
import matplotlib.transforms as tra
import mpl_toolkits.mplot3d as m3d
NaN = np.nan
EXTRA_ARTISTS = []
def add_to_ea(obj):
    if obj!=None: EXTRA_ARTISTS.append(obj)
COLORMAPS = [plt.cm.bwr, plt.cm.RdBu, plt.cm.hsv, plt.cm.jet, plt.cm.terrain, plt.cm.pink, plt.cm.Greys]
def get_colormap(idx): return COLORMAPS[idx % len(COLORMAPS)]
AX3D = None
def maybe_create_ax3d():
    global AX3D
    if AX3D == None:
        AX3D = plt.gcf().add_subplot(111, projection='3d')
        AX3D.set_xlabel('x')
        AX3D.set_ylabel('y')
        AX3D.set_zlabel('z')
        add_to_ea(AX3D)
def data_to_axis(coords):
    plt.axis() # must call this first
    return plt.gca().transLimits.transform(coords)
def axis_to_data(coords):
    plt.axis() # must call this first
    return plt.gca().transLimits.inverted().transform(coords)
def set_equal_axes():
    ax = plt.gca()
    if AX3D == None:
        ax.axes.set_aspect('equal')
        return
    try:
        ax.set_box_aspect([1,1,1])
        limits = np.array([ax.get_xlim3d(), ax.get_ylim3d(), ax.get_zlim3d()])
        origin = np.mean(limits, axis=1)
        radius = 0.5 * np.max(np.abs(limits[:, 1] - limits[:, 0]))
        x, y, z = origin
        ax.set_xlim3d([x - radius, x + radius])
        ax.set_ylim3d([y - radius, y + radius])
        ax.set_zlim3d([z - radius, z + radius])
    except:
        import matplotlib
        print('VERSION of MATPLOTLIB = {}'.format(matplotlib.__version__))
        print('ERROR: set_box_aspect is missing in this version of Matplotlib')

def loop_wait():
    while True:
        time.sleep(1)

        
`

// PauseDirective is appended to scripts executed in cancellable mode so an
// interactive window stays open until the process is terminated.
const PauseDirective = `input("Press any key to close")`
